/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds prompts from developer-owned templates.

Templates are string literals with {{name}} placeholders. They are parsed
once; binding returns a new Prompt, so a package-level template can be shared
across goroutines and bound per request.

	var greeting = promptbuilder.MustNewPrompt(`Evaluate "{{name}}": {{description}}`)

	p, err := greeting.BindText("name", c.Name)
	if err != nil {
		return err
	}
	p, err = p.BindText("description", c.Description)
	if err != nil {
		return err
	}
	text, err := p.Build()

# Binding methods

  - BindText binds runtime text verbatim.
  - BindFencedJSON binds a value marshaled as JSON inside a ```json fence.
  - Bind hands the prompt to a Bindable that fills in its own fields.

A placeholder that appears several times in a template receives the same
value at every occurrence. Substituted values are never scanned for further
placeholders, so bound text containing "{{" is emitted as is.

# Template syntax

Placeholder names start with a letter and contain only letters, digits and
underscores. Literal "{{" that is not a placeholder cannot appear in a
template; JSON examples must keep nested braces on separate lines.

# Errors

NewPrompt rejects malformed placeholders. Bind methods reject unknown or
already bound names. Build rejects prompts with unbound placeholders.
*/
package promptbuilder
