// Package extclient invokes a settings extension binary through its proto1
// command surface and decodes the JSON it prints. It is the caller's side of
// the contract served by extension.Run.
package extclient
