package aggregator

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when there are no rows at all.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrNoRecognizedRows is returned when no row classifies as a player
	// (participantid 1-10 with playername and champion) or a team
	// (participantid 100/200 with teamname).
	ErrNoRecognizedRows = errors.New("no recognizable player or team rows: need participantid 1-10 with playername and champion, or participantid 100/200 with teamname")

	// ErrPickOrderTie means two opposing lane picks mapped to the same global
	// draft slot, which the fixed draft table makes impossible.
	ErrPickOrderTie = errors.New("opposing picks share a global pick order")
)

// MissingColumnError reports a column that no row of the dataset carries.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q: no row has a value for it", e.Column)
}
