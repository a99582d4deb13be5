package service

import "errors"

// Error taxonomy (spec §7): a closed set of sentinel-wrapped values, in the
// style of goyang's flat errors.New/fmt.Errorf use — no external errors
// library fits a closed sentinel set better than stdlib's errors.Is/As (see
// DESIGN.md).
var (
	ErrInputNotFound    = errors.New("input_not_found")
	ErrInputUnreadable  = errors.New("input_unreadable")
	ErrOutputUnwritable = errors.New("output_unwritable")
	ErrEncryptedInput   = errors.New("encrypted_input")
	ErrSchemaLoadError  = errors.New("schema_load_error")
)
