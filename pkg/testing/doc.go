// Package testing provides deterministic frame-driving helpers for sheet
// tests.
//
// # Quick Start
//
// Create a driver, build a sheet on its scheduler, and pump frames:
//
//	func TestExpand(t *testing.T) {
//	    driver := sheettest.NewFrameDriver()
//	    s, _ := sheet.New(sheet.Config{
//	        Scheduler:      driver.Scheduler(),
//	        ViewportWidth:  1440,
//	        ViewportHeight: 900,
//	    })
//
//	    s.Dispatch(sheet.Expand)
//	    if err := driver.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// # Gestures
//
// Drag feeds pointer events at frame-spaced timestamps:
//
//	driver.Drag(s, 700, -300, 5) // start at y=700, move up 300px over 5 frames
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import sheettest "github.com/go-drift/snapsheet/pkg/testing"
package testing
