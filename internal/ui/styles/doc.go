// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colour palette and shared styles for vktier's
terminal output.

All colours use Lip Gloss AdaptiveColor for automatic light/dark detection.
Support levels map onto accents:

	2 (modern)  Emerald  [OK]
	1 (legacy)  Amber    [!]
	0 (none)    Rose     [X]

Every coloured status also carries an ASCII indicator so it reads the same
with colour disabled.
*/
package styles
