package config

type (
	InternalConfig struct {
		App App
	}
	App struct {
		Env                       string
		Port                      string
		Version                   string
		Timezone                  string
		EndpointPrefix            string
		MaxRequests               int
		ShutdownTimeout           int
		RabbitMQScheduleQueue     string
		StatusTickerCronSpec      string
		WeekScheduleCacheTTLInSec int
		CellLockTTLInSec          int
		AvatarURLExpiryInMinute   int
	}
)
