package cli

import "errors"

var (
	errMissingEditFlags = errors.New("must specify at least --name or --requirement")
	errMissingText      = errors.New("must specify --notes (coaching, side) or --score (tech)")
	errMissingRecordID  = errors.New("must specify --id of the record to edit")

	errMissingConfigFlags = errors.New("must specify at least --log-level or --default-requirement")
)
