// Package dynamodb provides the DynamoDB-backed store for user records
// written by the add-to-db function.
//
// # Overview
//
// The table has a simple primary key: the partition key "id" holds the
// user's email address. Each item carries exactly three attributes:
//
//   - id:        the email address (S)
//   - user_name: the display name (S)
//   - pincode:   the postal code (S, or N when it was sent as a JSON number)
//
// # Getting Started
//
// Create a [Client] with [New], supplying an AWS config, the DynamoDB table
// name, and any [Option] values you need:
//
//	client := dynamodb.New(
//	    &awsCfg,
//	    tableName,
//	    dynamodb.WithLogger(logger),
//	)
//	if err := client.Connect(); err != nil {
//	    return err
//	}
//
// By default, [Client.Connect] creates an AWS SDK v2 DynamoDB client from the
// supplied [aws.Config]. Supply [WithAPI] to inject a custom or mock
// implementation, or [WithEndpoint] to target DynamoDB Local.
//
// # Write Semantics
//
// [Client.PutUser] issues one unconditional PutItem. A second write for the
// same email replaces the earlier item in full, and concurrent writers are
// resolved by DynamoDB as last writer wins.
//
// # Concurrency
//
// [Client] is safe for concurrent use by multiple goroutines once
// [Client.Connect] has returned.
package dynamodb
