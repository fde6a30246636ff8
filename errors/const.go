// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package errors

// ErrCode is type for multiple recognizable errors.
type ErrCode int

// Unknown is the fallback code reported for errors that did not
// originate from this package. It is not part of the registry.
const Unknown ErrCode = 0

// error codes, fixed registry of the alerting platform
// values are contiguous and must never be reordered or extended
const (
	// messaging connection used before being initialized
	ConnNotInitialized ErrCode = 430

	// message could not be delivered to the broker
	MessageNotDelivered ErrCode = 431

	// monitor reported no metrics at all
	NoMetricsGiven ErrCode = 432

	// expected metric missing from monitor output
	MetricNotFound ErrCode = 433

	// resource is locked by another owner
	ResourceLocked ErrCode = 434

	// monitored system is not reachable
	SystemIsDown ErrCode = 435

	// reading data from the monitored source failed
	DataReadFailed ErrCode = 436

	// remote page could not be accessed
	PageNotAccessible ErrCode = 437

	// call to an external API failed
	APICallFailed ErrCode = 438

	// payload does not match any expected shape
	UnexpectedData ErrCode = 439

	// configured URL is not valid
	InvalidURL ErrCode = 440

	// parent identifiers of the payload do not match
	ParentIDMismatch ErrCode = 441

	// mandatory configuration key is absent
	MissingConfigKey ErrCode = 442

	// payload could not be decoded as JSON
	JSONDecodeFailed ErrCode = 443

	// metric value is outside its allowed behaviour
	BadMetricValue ErrCode = 444

	// credential configured as an empty string
	BlankCredential ErrCode = 445

	// no sources are enabled for monitoring
	NoEnabledSources ErrCode = 446

	// message type is not known to the router
	UnknownMessageType ErrCode = 447

	// if the item already present in the space
	AlreadyExists ErrCode = 448

	// if the item not found in the space
	NotFound ErrCode = 449

	// if the argument is not valid
	InvalidArgument ErrCode = 450

	// unclassified internal failure
	Internal ErrCode = 451
)

// Registry exposes the full ordered set of codes for validation or docs.
var Registry = []ErrCode{
	ConnNotInitialized,
	MessageNotDelivered,
	NoMetricsGiven,
	MetricNotFound,
	ResourceLocked,
	SystemIsDown,
	DataReadFailed,
	PageNotAccessible,
	APICallFailed,
	UnexpectedData,
	InvalidURL,
	ParentIDMismatch,
	MissingConfigKey,
	JSONDecodeFailed,
	BadMetricValue,
	BlankCredential,
	NoEnabledSources,
	UnknownMessageType,
	AlreadyExists,
	NotFound,
	InvalidArgument,
	Internal,
}
