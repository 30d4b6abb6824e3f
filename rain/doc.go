// Package rain animates falling 0/1 columns with fading trails.
//
// A Session owns the terminal mode, the last known terminal size, the live
// drops and the random source. Each Tick advances every drop one row and
// redraws its trail; the trail is never stored, it is recomputed from the head
// position with the palette indexed by trail offset.
package rain
