// Package chrome implements the browser ports with chromedp.
//
// A LaunchStrategy chosen once at startup decides how Chrome is started:
// LocalLaunch uses the system browser, HostedLaunch an explicit executable
// with the sandbox-free flag set hosted runtimes require.
package chrome
