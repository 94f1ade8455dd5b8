// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command yamdbctl is the operator CLI for a YaMDb database.
//
// # Commands
//
//   - migrate up / migrate down: apply or roll back schema migrations.
//   - createsuperuser: register an administrator with the superuser flag.
//   - load: replace application data with a directory of CSV fixtures.
//   - unload: wipe application data, keeping superusers.
//
// Every command reads DATABASE_URL and MIGRATION_PATH unless --db and
// --migrations-dir are given.
package main

func main() {
	Execute()
}
