// internal/adapters/factory/generator_factory.go
package factory

import (
	"fmt"
	"log"
	"sync"

	"github.com/jordanro2/rotable/internal/ports"
)

type codecPair struct {
	reader ports.TableReader
	writer ports.TableWriter
}

var (
	codecRegistry = make(map[ports.FileType]codecPair)
	registryMutex sync.RWMutex
)

// RegisterCodec is called by adapter packages during their init() phase to
// register the reader/writer pair that handles fileType.
func RegisterCodec(fileType ports.FileType, reader ports.TableReader, writer ports.TableWriter) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if _, exists := codecRegistry[fileType]; exists {
		log.Printf("Warning: Duplicate codec registration for %s. Overwriting existing one.", fileType)
	}
	codecRegistry[fileType] = codecPair{reader: reader, writer: writer}
}

// DynamicCodecFactory uses the registry populated by RegisterCodec.
type DynamicCodecFactory struct{}

// NewCodecFactory creates a new factory that uses the global registry.
func NewCodecFactory() ports.CodecFactory {
	return &DynamicCodecFactory{}
}

// Reader returns the TableReader registered for t from the registry.
func (f *DynamicCodecFactory) Reader(t ports.FileType) (ports.TableReader, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	pair, ok := codecRegistry[t]
	if !ok || pair.reader == nil {
		return nil, fmt.Errorf("%w: no reader registered for '%s' (check file extension)", ports.ErrUnsupportedFileType, t)
	}
	return pair.reader, nil
}

// Writer returns the TableWriter registered for t from the registry.
func (f *DynamicCodecFactory) Writer(t ports.FileType) (ports.TableWriter, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	pair, ok := codecRegistry[t]
	if !ok || pair.writer == nil {
		return nil, fmt.Errorf("%w: no writer registered for '%s' (check file extension)", ports.ErrUnsupportedFileType, t)
	}
	return pair.writer, nil
}

// RegisteredTypes reports every FileType with at least one side registered.
func RegisteredTypes() []ports.FileType {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	types := make([]ports.FileType, 0, len(codecRegistry))
	for t := range codecRegistry {
		types = append(types, t)
	}
	return types
}
