package disk

import "fmt"

// UnknownFilesystemError is returned when a partition does not hold a readable FAT filesystem
type UnknownFilesystemError struct {
	partition int
	err       error
}

func (e *UnknownFilesystemError) Error() string {
	return fmt.Sprintf("no FAT filesystem on partition %d: %v", e.partition, e.err)
}

func (e *UnknownFilesystemError) Unwrap() error {
	return e.err
}

func NewUnknownFilesystemError(partition int, err error) *UnknownFilesystemError {
	return &UnknownFilesystemError{
		partition: partition,
		err:       err,
	}
}

type NoPartitionTableError struct{}

func (e *NoPartitionTableError) Error() string {
	return "no partition table found on disk"
}

type MaxPartitionsExceededError struct {
	requested int
	max       int
}

func (e *MaxPartitionsExceededError) Error() string {
	return fmt.Sprintf("requested partition %d exceeds maximum partitions %d", e.requested, e.max)
}

func NewMaxPartitionsExceededError(requested, maxPart int) *MaxPartitionsExceededError {
	return &MaxPartitionsExceededError{
		requested: requested,
		max:       maxPart,
	}
}

type InvalidPartitionError struct {
	requested int
}

func (e *InvalidPartitionError) Error() string {
	return fmt.Sprintf("requested partition %d not found", e.requested)
}

func NewInvalidPartitionError(requested int) *InvalidPartitionError {
	return &InvalidPartitionError{
		requested: requested,
	}
}
