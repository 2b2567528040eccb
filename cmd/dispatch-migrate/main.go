// Command dispatch-migrate copies records from the legacy Django dispatch
// schema into the normalized Supabase-hosted Postgres schema.
//
// Usage:
//
//	dispatch-migrate schema up
//	dispatch-migrate migrate all
//	dispatch-migrate migrate patients --dry-run
//	dispatch-migrate verify all
//	dispatch-migrate backfill orders
//	dispatch-migrate status
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
