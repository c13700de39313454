package constants

// ContextKeyUserID is the key under which the authenticated user ID is stored
// in both the session and the request context.
const ContextKeyUserID = "user_id"

// Pagination bounds for list endpoints.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// Field length limits shared by validation and column definitions.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
	MaxVehicleNameLength = 255
	MaxMakerLength       = 100
	MaxModelLength       = 100
	MaxPlateNumberLength = 50
	MaxFuelTypeLength    = 50
	MaxStationNameLength = 255
)
