// Package format reads and writes grids as a C++ nested array literal.
//
// A saved grid looks like this:
//
//	// 2x3
//	std::vector<std::vector<int>> PatternAnimator::grid =
//	{
//		{1,0,0},
//		{0,0,1}
//	};
//	100001
//
// The first [HeaderLines] lines are skipped verbatim on read. Each following
// line holds one row; the closing "};" ends the data and the final line is
// the row-major bit-string of the same cells. The bit-string is written for
// consumers of the file and is never used to rebuild the grid; see
// [Document.Consistent].
package format
