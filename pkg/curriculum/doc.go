// Package curriculum defines the curriculum scheduling instance: courses,
// periods, prerequisite pairs and period load limits.
//
// # Instances
//
// Courses are numbered 1..N. A [Prerequisite] {Course: 3, Requires: 2} means
// course 3 may only be taken in a period strictly after course 2. Periods are
// numbered 0..Periods-1.
//
// Load limits bound each period: total credits in [MinLoad, MaxLoad] and the
// number of courses in [MinCourses, MaxCourses]. A zero maximum means
// "unbounded".
//
// # Files
//
// Instances are read from TOML or JSON with [Load] and [Decode]:
//
//	name = "cs-minor"
//	periods = 3
//	max_load = 10
//
//	[[courses]]
//	id = 1
//	name = "Intro to Programming"
//	credits = 4
//
//	[[courses]]
//	id = 2
//	name = "Data Structures"
//	credits = 4
//
//	[[prerequisites]]
//	course = 2
//	requires = 1
//
// Decoded instances are normalised (courses sorted, zero credits defaulted to
// one) and validated, which includes rejecting cyclic prerequisite
// relations. The bound computations in package bounds assume acyclicity and
// never check it themselves.
package curriculum
