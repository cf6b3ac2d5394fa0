package domain

// SourceError represents an error from the bookmark source layer.
type SourceError struct {
	Op  string
	Err string
}

func (e *SourceError) Error() string {
	return e.Op + ": " + e.Err
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
