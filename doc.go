// Copyright 2026 fopina. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package xsibas-workouts is a workout log viewer and note editor for workout logs kept as Google Sheets.

The spreadsheet must have an 'Exercises' tab mapping exercise names to demonstration videos and a
'WorkoutLog' tab with one row per exercise performed. The workout log is browsed as a calendar and
the only value ever written back is the Notes cell of an exercise.

xsibas-workouts supports the following commands:

  - authorise, to authorise access to Google Sheets and Google Drive
  - validate, to check a spreadsheet against the workout log tabs and columns
  - week, month and day, to display the workout calendar
  - browse, to browse the calendar and edit exercise notes interactively
  - note, to save the note for an exercise
  - get, to download the workout log (or a date range) as a TSV file
  - put, to update the exercise notes from a TSV file
  - videos, to search the exercise demonstration videos
  - sheets, to list recently opened spreadsheets and select the default spreadsheet
*/
package workouts
