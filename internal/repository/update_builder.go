package repository

import (
	"fmt"
	"strings"
)

// UpdateBuilder assembles the SET clause of a partial update. The set of
// mutable columns is fixed by each caller; values are always bound as
// positional parameters.
type UpdateBuilder struct {
	sets []string
	args []any
}

// Set binds a new value for a column.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// SetNow stamps a column with the database clock.
func (b *UpdateBuilder) SetNow(column string) *UpdateBuilder {
	b.sets = append(b.sets, column+" = NOW()")
	return b
}

// Empty reports whether no column has been touched.
func (b *UpdateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Clause returns the SET clause and the bound arguments with the row
// identifier appended as the final positional parameter.
func (b *UpdateBuilder) Clause(id any) (setClause string, idPlaceholder string, args []any) {
	args = append(append([]any{}, b.args...), id)
	return strings.Join(b.sets, ", "), fmt.Sprintf("$%d", len(args)), args
}
