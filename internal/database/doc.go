// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go        # Connection setup, driver selection, migrations
//	├── dbtest/            # File-backed SQLite fixture for package tests
//	├── users/             # Credential store
//	├── careers/           # Career CRUD
//	├── courses/           # Course CRUD and rating aggregates
//	├── ratings/           # Rating toggle
//	├── enrollments/       # Enrollment toggle
//	├── recommendations/   # Prediction history
//	└── audit/             # Audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	usersRepo := users.NewRepository(db.DB)
//	coursesRepo := courses.NewRepository(db.DB)
//
//	course, err := coursesRepo.GetByID(ctx, 5)
//
// Every method takes the request context. Lookups that find nothing return an
// error wrapping entities.ErrNotFound and unique violations wrap
// entities.ErrConflict, so callers match with errors.Is and never import gorm.
//
// # Relationships
//
// Foreign keys cascade on delete. Associations are never preloaded; listings
// that need related data use explicit joins.
package database
