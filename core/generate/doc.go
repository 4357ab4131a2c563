// Package generate turns a descriptor and a model into artifacts, and
// reconciles them into target directories.
//
// # Generation
//
// Generate applies every active descriptor template to the model:
//
//  1. the factory expression selects elements; each is bound to "self"
//  2. template context expressions are evaluated in order, each seeing the previous
//  3. the condition expression decides whether the artifact is included
//  4. the path expression (an HCL template) names the artifact
//  5. the content is rendered, or copied verbatim for copy templates
//
// Actor based templates run once per actor; their artifacts are partitioned by
// actor name in Result.ByDiscriminator. Templates run in parallel, but the result
// is ordered by path so runs are deterministic.
//
// # Materialization
//
// ToDirectory reconciles each accepted actor partition into its own directory
// with manifest ".generated-files-<actor>", then the main partition into the
// target directory with ".generated-files". PlanDirectory computes the same plans
// without touching the disk.
package generate
