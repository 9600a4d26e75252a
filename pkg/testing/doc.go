// Package testing provides deterministic test doubles for flipclock widgets.
//
// # Usage
//
// Build the widget against the tester's clock and scheduler, pump frames and
// assert on the recorded drawing operations:
//
//	func TestDigit(t *testing.T) {
//	    tester := fliptest.NewWidgetTesterWithT(t)
//	    digit, _ := flip.New(flip.Config{
//	        Clock:     tester.Clock(),
//	        Scheduler: tester.Scheduler(),
//	    })
//	    tester.PumpWidget(digit)
//
//	    digit.SetValue(5)
//	    ops := tester.Pump()
//	    if len(fliptest.OpsNamed(ops, "drawText")) != 2 {
//	        t.Error("expected both halves")
//	    }
//	}
//
// # Time
//
// The tester's clock only moves when told to:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Golden files
//
// A snapshot stores the last frame one op per line:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/digit.snapshot")
//
// Regenerate golden files with:
//
//	FLIPCLOCK_UPDATE_SNAPSHOTS=1 go test ./...
//
// The package shadows the standard library name, so import it as:
//
//	import fliptest "github.com/go-drift/flipclock/pkg/testing"
package testing
