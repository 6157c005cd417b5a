package errors

const (
	CodeNotFound       = "NOT_FOUND"
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
	CodeDatabase       = "DATABASE_ERROR"
	CodeCache          = "CACHE_ERROR"
)

var (
	ErrInvalidCoordinates = New(
		KindValidation,
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
	)

	ErrInvalidRadius = New(
		KindValidation,
		"INVALID_RADIUS",
		"radius_m must be greater than 0 and at most 100000",
	)

	ErrInvalidBBox = New(
		KindValidation,
		"INVALID_BBOX",
		"bbox requires lat_min < lat_max and lon_min < lon_max",
	)

	ErrGeoWithBuilding = New(
		KindValidation,
		"GEO_WITH_BUILDING",
		"building_id and geo filter cannot be combined",
	)

	ErrInvalidPagination = New(
		KindValidation,
		"INVALID_PAGINATION",
		"limit must be between 1 and 100 and offset must not be negative",
	)

	ErrActivityCycle = New(
		KindValidation,
		"ACTIVITY_CYCLE",
		"activity cannot be nested under itself or its descendants",
	)

	ErrInvalidRequest = New(
		KindValidation,
		CodeInvalidRequest,
		"Invalid request parameters",
	)

	ErrUnauthorized = New(
		KindUnauthorized,
		CodeUnauthorized,
		"Invalid or missing API key",
	)

	ErrReferenceConflict = New(
		KindConflict,
		CodeConflict,
		"Referenced entity no longer exists",
	)

	ErrDatabaseError = New(
		KindUnknown,
		CodeDatabase,
		"Database operation failed",
	)

	ErrCacheError = New(
		KindUnknown,
		CodeCache,
		"Cache operation failed",
	)

	ErrInternalServer = New(
		KindUnknown,
		CodeInternal,
		"Internal server error",
	)
)
