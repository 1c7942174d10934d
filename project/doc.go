/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package project holds the on-disk state of a textassert project: the
// document under evaluation, the criteria it is judged against, and the
// feedback each criterion accumulated in the previous round.
//
// A project file is YAML:
//
//	file: essay.md
//	criteria:
//	  - name: grammar
//	    description: Checks spelling and punctuation
//	    passed: false
//	    feedbacks:
//	      - quote: This text is missspelled.
//	        feedback: Missspelled has an extra 's'
//
// A relative file path is resolved against the directory holding the
// project file. The document itself is never cached; callers read it through
// DocumentPath on every evaluation.
package project
