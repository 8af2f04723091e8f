package datatable

import "errors"

var (
	// ErrNoColumns is returned when a table is built without columns.
	ErrNoColumns = errors.New("datatable: no columns")
	// ErrMissingAccessor is returned when a column has neither an accessor nor a cell renderer.
	ErrMissingAccessor = errors.New("datatable: column has no accessor")
	// ErrInvalidAccessor is returned when an accessor key path does not exist on the row type.
	ErrInvalidAccessor = errors.New("datatable: invalid accessor key")
	ErrDuplicateColumn = errors.New("datatable: duplicate column id")
	ErrUnknownColumn   = errors.New("datatable: unknown column")
	// ErrEmptySelection is returned by bulk actions invoked with no rows selected.
	ErrEmptySelection = errors.New("datatable: no rows selected")
	ErrUnknownAction  = errors.New("datatable: unknown bulk action")
)
