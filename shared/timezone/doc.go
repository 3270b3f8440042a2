// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Calendar days:
//     today := timezone.Today()                // Today's date in app timezone, as UTC midnight
//
//  3. Formatting times in app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//
// Supported timezone formats:
// - Standard timezone names only: "UTC", "Asia/Kathmandu", "America/New_York", "Europe/London"
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Trip dates never go through the app timezone: they are calendar days kept at UTC midnight.
package timezone
