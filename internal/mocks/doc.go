// Package mocks provides centralized mock implementations for testing.
//
// Service mocks use function fields so a test only stubs the calls it cares
// about. Store mocks are built on testify/mock for expectation-style tests.
//
// Usage:
//
//	import "github.com/phrazzld/lexis-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    learners := &mocks.MockLearnerService{
//	        GetDashboardSnapshotFn: func(ctx context.Context, userID uuid.UUID) (*service.DashboardSnapshot, error) {
//	            return &service.DashboardSnapshot{DailyGoal: 20}, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
