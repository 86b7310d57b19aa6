package config

import "time"

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./careerpath.db"

	DefaultAlgorithm  = "HS256"
	DefaultCookieName = "Authorization"

	Week = 7 * 24 * time.Hour
)
