// Package fieldtest provides a test harness for field controllers.
//
// # Quick Start
//
//	func TestTagsField(t *testing.T) {
//	    tester := fieldtest.NewFieldTester(t, field.Config[core.List[string]]{
//	        MinHeight: 25,
//	        MaxHeight: 250,
//	    })
//	    tester.PumpLayout(field.Measurements{Prefix: 10})
//
//	    tester.Scroll(50, 100)
//	    if got := tester.Snapshot().ContentHeight; got != 75 {
//	        t.Errorf("height = %v, want 75", got)
//	    }
//	}
//
// # Asynchronous Taps
//
// The tester is the field's dispatcher. Work dispatched from a tap handler
// goroutine is queued until the test calls Pump or AwaitTap:
//
//	done := tester.TapAsync()
//	if err := tester.AwaitTap(done); err != nil {
//	    t.Fatal(err)
//	}
//
// Handlers that update the value should do so through tester.Dispatch so the
// update runs on the test goroutine, as a real UI loop would require.
package fieldtest
