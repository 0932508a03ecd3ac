package port

import (
	"context"

	"github.com/b-it-bots/datahub/internal/core/domain"
)

// TelemetryStore receives robot location and status reports from clients.
// Locations replace by robot id, statuses append.
type TelemetryStore interface {
	// PutLocation stores a location report, replacing any previous report
	// for the same id. The returned bool reports whether the id was new.
	PutLocation(ctx context.Context, id string, loc domain.RobotLocation) (bool, error)

	// AppendStatus records a status message.
	AppendStatus(ctx context.Context, status domain.RobotStatus) error
}
