package badger

import "fmt"

const (
	fileRecordPrefix = "filerec:"
	indexMetaKey     = "filerecmeta"
	taskPrefix       = "task:"
)

// generationPrefix is the key prefix of every record saved in one
// generation of the index.
func generationPrefix(gen uint64) []byte {
	return []byte(fmt.Sprintf("%s%08x:", fileRecordPrefix, gen))
}

// makeFileRecordKey generates a key for the record at ordinal in index
// generation gen. Zero padding keeps lexicographic key order equal to walk
// order.
func makeFileRecordKey(gen uint64, ordinal int) []byte {
	return []byte(fmt.Sprintf("%s%08x:%08d", fileRecordPrefix, gen, ordinal))
}

// makeTaskKey generates a key for a task by ID.
func makeTaskKey(id string) []byte {
	return []byte(taskPrefix + id)
}

// taskIDFromKey recovers the task ID from a task key.
func taskIDFromKey(key []byte) string {
	return string(key[len(taskPrefix):])
}
