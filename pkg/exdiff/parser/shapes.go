package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ukaji3/exdiff-go/pkg/exdiff/models"
)

// PresetGeomMap maps OOXML preset geometry names to human-readable type labels.
var PresetGeomMap = map[string]string{
	"flowChartProcess":           "AutoShape-FlowchartProcess",
	"flowChartDecision":          "AutoShape-FlowchartDecision",
	"flowChartTerminator":        "AutoShape-FlowchartTerminator",
	"flowChartData":              "AutoShape-FlowchartData",
	"flowChartDocument":          "AutoShape-FlowchartDocument",
	"flowChartPredefinedProcess": "AutoShape-FlowchartPredefinedProcess",
	"flowChartConnector":         "AutoShape-FlowchartConnector",
	"rect":                       "AutoShape-Rectangle",
	"roundRect":                  "AutoShape-RoundedRectangle",
	"ellipse":                    "AutoShape-Oval",
	"diamond":                    "AutoShape-Diamond",
	"triangle":                   "AutoShape-IsoscelesTriangle",
	"rightArrow":                 "AutoShape-RightArrow",
	"leftArrow":                  "AutoShape-LeftArrow",
	"wedgeRectCallout":           "AutoShape-RectangularCallout",
	"straightConnector1":         "Line",
	"bentConnector3":             "AutoShape-Connector",
	"curvedConnector3":           "AutoShape-Connector",
	"line":                       "Line",
	"textBox":                    "TextBox",
}

// Type labels for drawing objects without a preset geometry.
const (
	TypeShape        = "Shape"
	TypeTextBox      = "TextBox"
	TypeConnector    = "Connector"
	TypePicture      = "Picture"
	TypeChart        = "Chart"
	TypeGraphicFrame = "GraphicFrame"
)

var errPartNotFound = errors.New("package part not found")

// drawingMarker mirrors xdr:from and xdr:to.
type drawingMarker struct {
	Col    int   `xml:"col"`
	ColOff int64 `xml:"colOff"`
	Row    int   `xml:"row"`
	RowOff int64 `xml:"rowOff"`
}

func (m drawingMarker) anchorPoint() models.AnchorPoint {
	return models.AnchorPoint{Row: m.Row, Col: m.Col, RowOffset: m.RowOff, ColOffset: m.ColOff}
}

// ExtractShapes extracts anchored drawing objects from an xlsx file, keyed
// by sheet name. Sheets without a drawing part are absent from the map.
func ExtractShapes(xlsxPath string) (map[string][]models.ShapeData, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheetDrawingMap, err := getSheetDrawingMap(&r.Reader)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.ShapeData, len(sheetDrawingMap))
	for sheetName, drawingPath := range sheetDrawingMap {
		drawingXML, err := readZipFile(&r.Reader, drawingPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", drawingPath, err)
		}
		shapes, err := parseDrawingXML(drawingXML)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", drawingPath, err)
		}
		result[sheetName] = shapes
	}

	return result, nil
}

// ExtractSheetShapes extracts the anchored drawing objects of one sheet.
func ExtractSheetShapes(xlsxPath, sheetName string) ([]models.ShapeData, error) {
	all, err := ExtractShapes(xlsxPath)
	if err != nil {
		return nil, err
	}
	return all[sheetName], nil
}

// getSheetDrawingMap returns a mapping of sheet names to their drawing XML paths.
func getSheetDrawingMap(r *zip.Reader) (map[string]string, error) {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	sheetsInfo, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return nil, err
	}

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}
	sheetFiles, err := parseWorkbookRels(wbRelsXML, sheetsInfo)
	if err != nil {
		return nil, err
	}

	for sheetName, sheetPath := range sheetFiles {
		relsPath := path.Join(path.Dir(sheetPath), "_rels", path.Base(sheetPath)+".rels")
		sheetRelsXML, err := readZipFile(r, relsPath)
		if errors.Is(err, errPartNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		target, err := findDrawingRelationship(sheetRelsXML)
		if err != nil {
			return nil, err
		}
		if target != "" {
			result[sheetName] = resolveRelativePath(target, path.Dir(sheetPath))
		}
	}

	return result, nil
}

// parseDrawingXML parses drawing XML content and returns the anchored objects
// in document order. Absolute anchors carry no cell position and are skipped.
func parseDrawingXML(data []byte) ([]models.ShapeData, error) {
	return parseAnchors(xml.NewDecoder(bytes.NewReader(data)))
}

// parseAnchors collects the objects of every cell anchor up to the end of the
// current element, or to the end of the document.
func parseAnchors(decoder *xml.Decoder) ([]models.ShapeData, error) {
	var results []models.ShapeData

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "twoCellAnchor", "oneCellAnchor":
				anchorResults, err := parseAnchor(decoder, t)
				if err != nil {
					return nil, err
				}
				results = append(results, anchorResults...)
			case "AlternateContent":
				alt, err := parseAlternateContent(decoder, parseAnchors)
				if err != nil {
					return nil, err
				}
				results = append(results, alt...)
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	return results, nil
}

// parseAlternateContent reads the first mc:Choice or mc:Fallback branch with
// parseBody and skips the others. Every branch describes the same object.
func parseAlternateContent(decoder *xml.Decoder, parseBody func(*xml.Decoder) ([]models.ShapeData, error)) ([]models.ShapeData, error) {
	var (
		results []models.ShapeData
		chosen  bool
	)

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if !chosen && (t.Name.Local == "Choice" || t.Name.Local == "Fallback") {
				chosen = true
				if results, err = parseBody(decoder); err != nil {
					return nil, err
				}
				continue
			}
			if err := decoder.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return results, nil
		}
	}
}

// parseAnchor parses an anchor element and the objects it positions.
// Objects inside a group share the group's anchor.
func parseAnchor(decoder *xml.Decoder, start xml.StartElement) ([]models.ShapeData, error) {
	var (
		objects  []models.ShapeData
		from, to *drawingMarker
	)

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "from", "to":
				var m drawingMarker
				if err := decoder.DecodeElement(&m, &t); err != nil {
					return nil, err
				}
				if t.Name.Local == "from" {
					from = &m
				} else {
					to = &m
				}
			case "sp", "cxnSp", "pic", "graphicFrame":
				obj, err := parseObject(decoder, t)
				if err != nil {
					return nil, err
				}
				objects = append(objects, obj)
			case "grpSp":
				grp, err := parseGroupShape(decoder)
				if err != nil {
					return nil, err
				}
				objects = append(objects, grp...)
			case "AlternateContent":
				alt, err := parseAlternateContent(decoder, parseGroupShape)
				if err != nil {
					return nil, err
				}
				objects = append(objects, alt...)
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	if from == nil {
		return nil, nil
	}
	for i := range objects {
		objects[i].From = from.anchorPoint()
		if start.Name.Local == "twoCellAnchor" && to != nil {
			p := to.anchorPoint()
			objects[i].To = &p
		}
	}
	return objects, nil
}

// parseGroupShape collects the objects up to the end of the current element,
// descending into nested groups.
func parseGroupShape(decoder *xml.Decoder) ([]models.ShapeData, error) {
	var results []models.ShapeData

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp", "cxnSp", "pic", "graphicFrame":
				obj, err := parseObject(decoder, t)
				if err != nil {
					return nil, err
				}
				results = append(results, obj)
			case "grpSp":
				grp, err := parseGroupShape(decoder)
				if err != nil {
					return nil, err
				}
				results = append(results, grp...)
			case "AlternateContent":
				alt, err := parseAlternateContent(decoder, parseGroupShape)
				if err != nil {
					return nil, err
				}
				results = append(results, alt...)
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	return results, nil
}

// parseObject parses a single drawing object up to its end element.
func parseObject(decoder *xml.Decoder, start xml.StartElement) (models.ShapeData, error) {
	var (
		shape      models.ShapeData
		prst       string
		isTextBox  bool
		isChart    bool
		haveProps  bool
		paragraphs []string
	)

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return shape, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				if haveProps {
					break
				}
				haveProps = true
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "id":
						shape.ID = attr.Value
					case "name":
						shape.Name = attr.Value
					}
				}
			case "cNvSpPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "txBox" && (attr.Value == "1" || attr.Value == "true") {
						isTextBox = true
					}
				}
			case "prstGeom":
				for _, attr := range t.Attr {
					if attr.Name.Local == "prst" {
						prst = attr.Value
					}
				}
			case "chart":
				isChart = true
			case "p":
				paragraphs = append(paragraphs, "")
			case "t":
				txt, err := readElementText(decoder)
				if err != nil {
					return shape, err
				}
				if len(paragraphs) == 0 {
					paragraphs = append(paragraphs, "")
				}
				paragraphs[len(paragraphs)-1] += txt
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	shape.Text = strings.TrimSpace(strings.Join(paragraphs, "\n"))
	shape.TypeName = typeLabel(start.Name.Local, prst, isTextBox, isChart)
	return shape, nil
}

// typeLabel determines the type label of a drawing object.
func typeLabel(element, prst string, isTextBox, isChart bool) string {
	switch element {
	case "pic":
		return TypePicture
	case "graphicFrame":
		if isChart {
			return TypeChart
		}
		return TypeGraphicFrame
	}

	if isTextBox {
		return TypeTextBox
	}
	if prst != "" {
		if label, ok := PresetGeomMap[prst]; ok {
			return label
		}
		return "AutoShape-" + prst
	}
	if element == "cxnSp" {
		return TypeConnector
	}
	return TypeShape
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%w: %s", errPartNotFound, name)
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. Absolute targets are package-rooted.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}

func parseWorkbookSheets(data []byte) (map[string]string, error) {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result, nil
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) (map[string]string, error) {
	result := make(map[string]string) // sheet name -> part path
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result, nil
}

func findDrawingRelationship(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var relType, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Type":
					relType = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if strings.HasSuffix(relType, "/drawing") {
				return target, nil
			}
		}
	}
}
