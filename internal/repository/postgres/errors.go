package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// invalidTextRepresentation is raised when an id is not a well-formed UUID.
const invalidTextRepresentation = "22P02"

func isInvalidID(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == invalidTextRepresentation
}
