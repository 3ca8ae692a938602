// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Channel list fields
	FieldPath        = "path"
	FieldLine        = "line"
	FieldLineNumber  = "line_number"
	FieldField       = "field"
	FieldToken       = "token"
	FieldChannels    = "channels"
	FieldRejected    = "rejected"
	FieldTransponder = "transponder"
	FieldServiceID   = "service_id"

	// Network fields
	FieldListenAddr = "listen_addr"
)
