// Command lambda-s3-deploy deploys a Lambda function from a local handler
// file and wires it to S3 object-creation events on a bucket.
//
// Usage:
//
//	lambda-s3-deploy deploy --bucket my-bucket --function my-fn --role-arn arn:...
//	lambda-s3-deploy destroy --bucket my-bucket --function my-fn
//	lambda-s3-deploy version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lambda-s3-deploy",
		Short: "Deploy a Lambda function with an S3 create-object trigger",
		Long: `lambda-s3-deploy packages a local handler file, creates or updates the
Lambda function, grants S3 permission to invoke it and registers an
ObjectCreated notification rule on the bucket.

The same command can be run repeatedly: updates are in-place and the
permission and trigger rule are deduplicated.`,
	}

	rootCmd.AddCommand(
		newDeployCmd(),
		newDestroyCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lambda-s3-deploy %s\n", version)
		},
	}
}
