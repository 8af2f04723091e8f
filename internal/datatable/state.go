package datatable

// SortKey orders rows by one column.
type SortKey struct {
	ColumnID string
	Desc     bool
}

type Sorting []SortKey

// ColumnFilter keeps rows whose column value is one of Values.
type ColumnFilter struct {
	ColumnID string
	Values   []string
}

// PaginationState is the zero-based page position the table holds locally.
type PaginationState struct {
	PageIndex int
	PageSize  int
}

// PaginationUpdate is either a PaginationState value or a PaginationFunc
// computing the next state from the previous one.
type PaginationUpdate interface {
	next(prev PaginationState) PaginationState
}

func (s PaginationState) next(PaginationState) PaginationState { return s }

type PaginationFunc func(prev PaginationState) PaginationState

func (f PaginationFunc) next(prev PaginationState) PaginationState { return f(prev) }

// Mode is the body the table renders. Modes are exclusive and resolved in
// the order error, loading, empty, data.
type Mode int

const (
	ModeData Mode = iota
	ModeEmpty
	ModeLoading
	ModeError
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeLoading:
		return "loading"
	case ModeError:
		return "error"
	}
	return "data"
}

// ClearPolicy decides when a bulk action clears the selection.
type ClearPolicy int

const (
	// ClearAlways clears after the handler returns, whatever the outcome.
	ClearAlways ClearPolicy = iota
	// ClearOnSuccess keeps the selection when the handler fails.
	ClearOnSuccess
)
