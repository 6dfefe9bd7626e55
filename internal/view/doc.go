// Package view implements the editing state machine shared by the window and
// terminal front ends.
//
// An [Editor] owns the grid, a pixel scale and a pan offset. Front ends turn
// their native input into [Event] values, feed them to [Editor.Handle] and
// call [Editor.Render] once per frame with a [Surface] that draws in display
// units.
//
//   - Left button down toggles the cell under the pointer.
//   - Right button down starts panning; motion moves the grid; right button
//     up stops panning.
//   - A save request hands a snapshot of the grid to the configured [Saver].
package view
