// Package field implements picker-style form fields: fields that display
// arbitrary content inside a decorated input frame and open a picker when
// tapped.
//
// # Overview
//
// A [Controller] ties together:
//   - a [core.ValueController] holding the field value,
//   - a [HeightNegotiator] that grows the content area while its content
//     overflows and shrinks it back when the content gets smaller,
//   - a [ChromeMeasurer] that records the prefix and suffix widths measured
//     by the renderer after its first layout pass.
//
// Renderers read a [Snapshot] to draw the frame. [OverlayBounds] and
// [FrameHeightAdjustment] place the content inside the frame so it never
// underlaps the prefix, suffix, floating label, or helper and error text.
//
// # Lifecycle
//
//	ctrl := field.New(field.Config[core.List[string]]{
//	    Decoration: decoration.InputDecoration{LabelText: "Tags"},
//	    MinHeight:  3,
//	    MaxHeight:  8,
//	    OnTap: func(ctx context.Context, tags core.List[string], ok bool) error {
//	        picked, err := pickTags(ctx, tags)
//	        if err != nil {
//	            return err
//	        }
//	        return value.Set(picked)
//	    },
//	})
//	defer ctrl.Dispose()
//
//	ctrl.BeginLayout(measurer) // after the first layout pass
//	ctrl.CompleteLayout()      // from the post-layout callback
//	ctrl.OnScrollMetrics(extent, viewport)
//	snap := ctrl.Snapshot(width)
//
// # Taps
//
// Tap runs the handler on the caller's goroutine. TapAsync runs it on a new
// goroutine and hops back to the UI thread through Config.Dispatch. In both
// cases the displayed value is re-synced after the handler finishes, even when
// it fails, and taps that arrive while a handler is still running are ignored.
//
// # Compensation
//
// Helper and error text, floating labels and theme insets take space the field
// cannot measure. [Compensation] holds configurable offsets for them;
// [DefaultCompensation] reserves 21 units for helper or error text.
package field
