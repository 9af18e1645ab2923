package config

const (
	// DefaultConfigPath is looked up in the working directory.
	DefaultConfigPath = "cs2-posts.yml"

	// Site layout, relative to the config file's directory.
	DefaultPostsDir  = "src/data/posts"
	DefaultImagesDir = "src/assets/posts"

	// Session workspace
	DefaultWorkspacePrefix = "cs2_post_"

	// DataFileExt is appended to a map's short name to form its data file.
	DataFileExt = ".ts"
)
