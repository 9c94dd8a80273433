package constvars

// Validation messages per validator tag, consumed by exceptions.FormatFirstValidationError.
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"oneof":         "must be one of: %s",
	"clock_time":    "must be a wall-clock time in HH:MM format",
	"calendar_date": "must be a calendar date in YYYY-MM-DD format",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTimeSlotNotFound              = "time slot not found"
	ErrClientStaffNotFound                 = "staff member not found"
	ErrClientAssignmentNotFound            = "assignment not found"
	ErrClientDegenerateTimeSlot            = "start time and end time must differ"
	ErrClientInvalidStatusTransition       = "this assignment status change is not allowed"
	ErrClientCellBusy                      = "this schedule cell is being modified, try again"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevInvalidRequestPayload  = "invalid request payload"
	ErrDevDocumentNotFound       = "document not found"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevMissingRequestID       = "request ID missing from context"

	// URL params
	ErrDevURLParamIDValidationFailed = "URL param '%s' validation failed"
	ErrDevQueryParamValidationFailed = "query param '%s' validation failed"

	// Scheduling
	ErrDevTimeSlotNotFound          = "time slot not found in catalog"
	ErrDevTimeSlotDegenerateWindow  = "time slot start equals end"
	ErrDevTimeSlotMalformedClock    = "time slot start or end is not a valid HH:MM clock time"
	ErrDevStaffNotFound             = "staff member not found in directory"
	ErrDevAssignmentNotFound        = "assignment not found in any cell"
	ErrDevInvalidStatusTransition   = "undefined assignment status transition"
	ErrDevCellLockNotAcquired       = "per-cell mutation lock not acquired"
	ErrDevOrphanedTimeSlotReference = "cell references a time slot missing from the catalog"
	ErrDevMalformedCalendarDate     = "malformed calendar date"
	ErrDevMalformedWeekStart        = "malformed week start date"

	// MongoDB
	ErrDevMongoDBInsertDocument = "failed to insert document to mongoDB"
	ErrDevMongoDBFindDocument   = "failed to find document in mongoDB"
	ErrDevMongoDBUpdateDocument = "failed to update document in mongoDB"
	ErrDevMongoDBDeleteDocument = "failed to delete document in mongoDB"

	// Redis
	ErrDevRedisSet    = "failed to set redis key"
	ErrDevRedisGet    = "failed to get redis key '%s'"
	ErrDevRedisDelete = "failed to delete redis key"
	ErrDevRedisSetNX  = "failed to set redis key with NX"
	ErrDevRedisExpire = "failed to refresh redis key TTL"

	// RabbitMQ
	ErrDevRabbitMQPublish = "failed to publish message to rabbitMQ"

	// Minio
	ErrDevMinioCreateObject  = "failed to create object in bucket '%s'"
	ErrDevMinioPresignObject = "failed to presign object in bucket '%s'"
)
