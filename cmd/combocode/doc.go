// Command combocode is the command-line interface to the circumstellar
// envelope modeling core: parameter resolution, transition assembly,
// line profile fitting, and inspection of prior model runs.
package main
