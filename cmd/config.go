package cmd

// Config carries the application settings loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	// Cron spec (with seconds) for the overdue-parcel sweep.
	OverdueFlagSchedule string

	// Seed credentials for the bootstrap super-admin account.
	SuperAdminName  string
	SuperAdminEmail string
}
