package main

import (
	"github.com/spf13/cobra"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/publish"
)

func publishCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the build output to S3",
		Long: `Upload the compiled manifest and partials to an S3 bucket.

The bucket, key prefix, and region come from the publish section of
arbor.json and can be overridden with flags. Credentials use the
standard AWS chain (environment, shared config, instance role).

Examples:
  arbor publish
  arbor publish --bucket=my-partials --prefix=v2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, bucket, prefix, region)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Target S3 bucket (default from arbor.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from arbor.json)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from credential chain)")

	return cmd
}

func runPublish(cmd *cobra.Command, bucket, prefix, region string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if bucket == "" {
		bucket = cfg.Publish.Bucket
	}
	if prefix == "" {
		prefix = cfg.Publish.Prefix
	}
	if region == "" {
		region = cfg.Publish.Region
	}

	ctx := cmd.Context()
	publisher, err := publish.New(ctx, publish.Options{
		Bucket: bucket,
		Prefix: prefix,
		Region: region,
	})
	if err != nil {
		return err
	}

	info("Publishing %s to s3://%s/%s", cfg.OutputPath(), bucket, prefix)

	n, err := publisher.PublishDir(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}

	success("Published %d files", n)
	return nil
}
