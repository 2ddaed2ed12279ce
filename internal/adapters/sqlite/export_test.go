package sqlite

// UpSection exports upSection for testing.
var UpSection = upSection
