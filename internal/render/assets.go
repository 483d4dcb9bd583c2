package render

import _ "embed"

// StylesheetName is the file name the site build writes the stylesheet under.
const StylesheetName = "snipdoc.css"

//go:embed style.css
var baseCSS []byte
