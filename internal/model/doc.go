// Package model provides the record types shared by every forge package.
//
// This package contains type definitions and small pure helpers only. All
// other internal packages import model; model imports nothing internal.
//
// Key design constraints:
//   - Calendar days are always carried as YYYY-MM-DD date keys (see DateKey)
//   - Date keys are formatted at the boundary and compared as strings
//   - All JSON and YAML tags use snake_case
package model
