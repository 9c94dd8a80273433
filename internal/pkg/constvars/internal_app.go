package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MISE_SVC_"
)

const (
	ResourceTimeSlots = "time-slots"
	ResourceSchedules = "schedules"
	ResourceStaffs    = "staffs"
)

// Wall-clock and calendar formats used across the scheduling core.
const (
	ClockTimeLayout    = "15:04"
	CalendarDateLayout = "2006-01-02"
)

const (
	MongoCollectionTimeSlots     = "time_slots"
	MongoCollectionScheduleCells = "schedule_cells"
	MongoCollectionStaffs        = "staffs"
)

const (
	RedisWeekScheduleKeyFormat = "schedule:week:%s"
	RedisCellLockKeyFormat     = "schedule:cell:%s:%s"
	RedisCellStatusKeyFormat   = "schedule:status:%s:%s"
	RedisTickerLeaderLockKey   = "schedule:ticker:leader"
)
