// Package compare measures the agreement between an estimated ground
// reaction force recording and a force plate reference, and renders the
// three-panel comparison figure.
//
// Both recordings are motion tables sharing one time base. Statistics are
// taken over the full aligned vectors with no windowing, detrending or
// resampling. When either recording is missing, Load substitutes a
// deterministic synthetic pair so the figure can always be produced.
package compare
