// Package captainhook rewrites marked comment blocks in text templates with
// asset references.
//
// # Quick Start
//
// A block is delimited by a begin and an end marker rendered from the comment
// style of the template type:
//
//	<!-- begin:js -->
//	<!-- end:js -->
//
// Create an injector for the template and inject files into the block:
//
//	inj, err := captainhook.New(html)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := inj.Inject("js", []string{"vendor.js", "app.js"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every file becomes a tag chosen by its extension:
//
//	<!-- begin:js -->
//	<script src="vendor.js"></script>
//	<script src="app.js"></script>
//	<!-- end:js -->
//
// # Reconciliation
//
// Inject is idempotent. Tags already in the block that are still requested
// keep their position, new tags are appended in the order given, and tags
// that are no longer requested are removed. New lines reuse the whitespace
// that precedes the begin marker. A template without the requested block is
// returned unchanged.
//
// # Template Types
//
// Two template types are built in:
//
//	html  <!-- {marker}:{type} -->
//	scss  // {marker}:{type}
//
// Other types need an explicit comment style:
//
//	inj, err := captainhook.New(pug,
//	    captainhook.WithTemplateType("pug"),
//	    captainhook.WithCommentStyle("//- {marker}:{type}"),
//	)
//
// # Injection Templates
//
// Tags are rendered from a per-extension pattern. The defaults cover css, js
// and scss; WithInjectionTemplates adds or overrides extensions:
//
//	captainhook.WithInjectionTemplates(map[string]string{
//	    "jpg": `<img src="{file}">`,
//	})
//
// Patterns accept both {name} and ERB-style <%= name %> placeholders.
//
// # Error Handling
//
// Errors wrap the sentinels declared in errors.go and can be checked with
// errors.Is:
//
//	if errors.Is(err, captainhook.ErrUnknownExtension) {
//	    // register a template for the extension
//	}
//
// On error the injector's template is left untouched.
package captainhook
