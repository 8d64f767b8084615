// Package xmlstream converts XML documents into JSON output in a
// stream, without building an intermediate tree on either side.
//
// The package is organized into several sub-packages:
//
//   - transcode: the conversion core, turning element events into JSON
//     construction events
//   - encoding/xml: XML input adapter feeding the transcoder
//   - encoding/json: JSON text encoder
//   - transform: built-in stream transformers
//   - token: token-based streaming infrastructure
//
// These combine into a streaming pipeline:
//
//	parse XML -> transcode -> transform_1 -> ... -> transform_n -> encode JSON
//
// Every stage streams, so output starts as soon as input arrives and
// memory usage does not grow with the size of the document.
//
// The conversion is directed by instructions carried on the XML itself,
// in a reserved namespace (http://pageseeder.org/JSON by default):
// json:array, json:object and json:null elements force the JSON shape,
// the json:name attribute overrides the serialization key, and the
// json:string, json:number, json:boolean and json:null attributes
// declare which of an element's children and attributes are read as
// scalars of that type.  Everything else becomes a JSON object.
//
// The Convert function runs the whole pipeline.  The CLI utility is in
// the directory cmd/x2j.  You can install it with:
//
//	go install github.com/arnodel/xmlstream/cmd/x2j
package xmlstream
