// Package poster downloads movie posters and renders them as coloured
// half-block text so the details view can preview artwork in a terminal.
package poster
