package dataset

import "errors"

// ErrInvalidDataset is returned, wrapped, for any document that cannot be
// turned into a consistent catalogue.
var ErrInvalidDataset = errors.New("invalid dataset")
