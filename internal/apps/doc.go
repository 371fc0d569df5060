// Package apps provides the applications that run inside StackWin windows.
//
// Each launcher entry maps to an App by its base id. A window id may carry
// an instance suffix separated by a double underscore (e.g. notes__1a2b3c4d)
// so several windows can run the same application with their own data.
//
// Apps are pure: they render from the window's stored data and return new
// data in response to keys. The window manager persists whatever they
// return.
package apps
