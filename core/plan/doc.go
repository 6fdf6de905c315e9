// Package plan turns scenario inputs into a pump scheduling MILP, extracts
// schedules and cost metrics from solver assignments, and builds the naive
// baseline used to quantify optimization savings.
package plan
