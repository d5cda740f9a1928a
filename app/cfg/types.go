package cfg

type Cfg struct {
	// Telegram configuration
	BotToken         string
	ModerationChatID int64
	ChannelID        string

	// Application configuration
	SourcesDir         string
	KeywordsFile       string
	DBPath             string
	Port               string
	CheckInterval      int // minutes
	StartupDelay       int // seconds
	ReportInterval     int // hours, 0 disables the daily report
	FailureCooldown    int // seconds
	RepublishOnFailure bool
	UTMCampaign        string
	UTMContent         string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
