// Package testutil provides helpers shared by prjconf tests.
//
//   - TestProject: a temporary project directory with a project file
//   - AssertErrorCode / AssertErrorDetail: checks on structured errors
package testutil
