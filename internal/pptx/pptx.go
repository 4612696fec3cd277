// Package pptx writes PowerPoint decks directly as OOXML. Only the parts
// the lecture exporter needs are generated: a blank layout, text boxes,
// one picture per slide, speaker notes, and hidden narration audio that
// plays automatically.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// EMU per inch. Slide size is fixed at 10 x 5.625 inches (16:9).
const (
	emuPerInch = 914400
	slideCX    = 10 * emuPerInch
	slideCY    = 5143500
)

type Kind int

const (
	KindTitle Kind = iota
	KindAgenda
	KindContent
)

type Image struct {
	Data []byte
	Ext  string // png, jpg, webp
}

type Audio struct {
	Data []byte
	Ext  string // mp3, wav
}

type Slide struct {
	Kind     Kind
	Title    string
	Subtitle string
	Bullets  []string
	Image    *Image
	Notes    string
	Audio    *Audio
}

type Deck struct {
	Title  string
	Author string
	Slides []Slide
}

func (d *Deck) AddSlide(s Slide) {
	d.Slides = append(d.Slides, s)
}

func inches(v float64) int64 {
	return int64(v * emuPerInch)
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Write serializes the deck to w as a .pptx archive.
func (d *Deck) Write(w io.Writer) error {
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}

	zw := zip.NewWriter(w)

	add := func(name, content string) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write([]byte(content))
		return err
	}
	addRaw := func(name string, content []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write(content)
		return err
	}

	if err := add("[Content_Types].xml", d.contentTypes()); err != nil {
		return err
	}
	if err := add("_rels/.rels", rootRels); err != nil {
		return err
	}
	if err := add("docProps/core.xml", d.coreProps()); err != nil {
		return err
	}
	if err := add("docProps/app.xml", d.appProps()); err != nil {
		return err
	}
	if err := add("ppt/presentation.xml", d.presentation()); err != nil {
		return err
	}
	if err := add("ppt/_rels/presentation.xml.rels", d.presentationRels()); err != nil {
		return err
	}
	if err := add("ppt/theme/theme1.xml", themeXML("Office Theme")); err != nil {
		return err
	}
	if err := add("ppt/theme/theme2.xml", themeXML("Notes Theme")); err != nil {
		return err
	}
	if err := add("ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	if err := add("ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels); err != nil {
		return err
	}
	if err := add("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	if err := add("ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels); err != nil {
		return err
	}
	if err := add("ppt/notesMasters/notesMaster1.xml", notesMasterXML); err != nil {
		return err
	}
	if err := add("ppt/notesMasters/_rels/notesMaster1.xml.rels", notesMasterRels); err != nil {
		return err
	}

	for i, slide := range d.Slides {
		n := i + 1
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", n), d.slideXML(slide)); err != nil {
			return err
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), d.slideRels(slide, n)); err != nil {
			return err
		}
		if slide.Image != nil {
			if err := addRaw(fmt.Sprintf("ppt/media/image%d.%s", n, slide.Image.Ext), slide.Image.Data); err != nil {
				return err
			}
		}
		if slide.Audio != nil {
			if err := addRaw(fmt.Sprintf("ppt/media/audio%d.%s", n, slide.Audio.Ext), slide.Audio.Data); err != nil {
				return err
			}
		}
		if err := add(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notesSlideXML(slide.Notes)); err != nil {
			return err
		}
		if err := add(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), notesSlideRels(n)); err != nil {
			return err
		}
	}

	return zw.Close()
}

func (d *Deck) contentTypes() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	sb.WriteString(`<Default Extension="jpg" ContentType="image/jpeg"/>`)
	sb.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	sb.WriteString(`<Default Extension="webp" ContentType="image/webp"/>`)
	sb.WriteString(`<Default Extension="mp3" ContentType="audio/mpeg"/>`)
	sb.WriteString(`<Default Extension="wav" ContentType="audio/wav"/>`)
	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/notesMasters/notesMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/theme/theme2.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	for i := range d.Slides {
		sb.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1))
		sb.WriteString(fmt.Sprintf(`<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>`, i+1))
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

const rootRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

func (d *Deck) coreProps() string {
	now := time.Now().UTC().Format(time.RFC3339)
	return xml.Header + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(d.Title) + `</dc:title>` +
		`<dc:creator>` + esc(d.Author) + `</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + now + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + now + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func (d *Deck) appProps() string {
	return xml.Header + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>AI Teaching Assistant</Application>` +
		fmt.Sprintf(`<Slides>%d</Slides>`, len(d.Slides)) +
		`</Properties>`
}

func (d *Deck) presentation() string {
	var slides strings.Builder
	for i := range d.Slides {
		slides.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 3+i))
	}
	return xml.Header + `<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:notesMasterIdLst><p:notesMasterId r:id="rId2"/></p:notesMasterIdLst>` +
		`<p:sldIdLst>` + slides.String() + `</p:sldIdLst>` +
		fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, slideCX, slideCY) +
		`<p:notesSz cx="6858000" cy="9144000"/>` +
		`</p:presentation>`
}

func (d *Deck) presentationRels() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	sb.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster" Target="notesMasters/notesMaster1.xml"/>`)
	for i := range d.Slides {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 3+i, i+1))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func (d *Deck) slideRels(s Slide, n int) string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, n))
	if s.Image != nil {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.%s"/>`, n, s.Image.Ext))
	}
	if s.Audio != nil {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/audio" Target="../media/audio%d.%s"/>`, n, s.Audio.Ext))
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId5" Type="http://schemas.microsoft.com/office/2007/relationships/media" Target="../media/audio%d.%s"/>`, n, s.Audio.Ext))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// Theme brand green, used for the title slide background and accents.
const brandColor = "3A664D"

func (d *Deck) slideXML(s Slide) string {
	var shapes strings.Builder
	shapeID := 2

	nextID := func() int {
		shapeID++
		return shapeID
	}

	var background string
	switch s.Kind {
	case KindTitle:
		background = `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="` + brandColor + `"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`
		// Title centered vertically, 44pt white.
		shapes.WriteString(textBox(nextID(), "Title",
			inches(0.5), inches(2.0), inches(9.0), inches(1.2),
			[]para{{text: s.Title, size: 4400, bold: true, color: "FFFFFF", align: "ctr"}}))
		if s.Subtitle != "" {
			shapes.WriteString(textBox(nextID(), "Subtitle",
				inches(0.5), inches(3.3), inches(9.0), inches(0.8),
				[]para{{text: s.Subtitle, size: 2000, color: "FFFFFF", align: "ctr"}}))
		}
	case KindAgenda:
		shapes.WriteString(textBox(nextID(), "Title",
			inches(0.5), inches(0.3), inches(9.0), inches(0.9),
			[]para{{text: s.Title, size: 3200, bold: true, color: brandColor}}))
		// Two balanced columns.
		half := (len(s.Bullets) + 1) / 2
		left, right := s.Bullets[:half], s.Bullets[half:]
		shapes.WriteString(textBox(nextID(), "Agenda Left",
			inches(0.5), inches(1.4), inches(4.4), inches(3.8), bulletParas(left)))
		if len(right) > 0 {
			shapes.WriteString(textBox(nextID(), "Agenda Right",
				inches(5.1), inches(1.4), inches(4.4), inches(3.8), bulletParas(right)))
		}
	default:
		shapes.WriteString(textBox(nextID(), "Title",
			inches(0.5), inches(0.3), inches(9.0), inches(0.9),
			[]para{{text: s.Title, size: 3200, bold: true, color: brandColor}}))
		bodyWidth := 9.0
		if s.Image != nil {
			bodyWidth = 4.8
		}
		shapes.WriteString(textBox(nextID(), "Body",
			inches(0.5), inches(1.4), inches(bodyWidth), inches(3.8), bulletParas(s.Bullets)))
		if s.Image != nil {
			// Image on the right, 4 x 3 inches at (5.5, 1.5).
			shapes.WriteString(picture(nextID(), "rId3",
				inches(5.5), inches(1.5), inches(4.0), inches(3.0)))
		}
	}

	var timing string
	if s.Audio != nil {
		audioID := nextID()
		// Parked off-canvas so it never shows during the presentation.
		shapes.WriteString(audioShape(audioID, "rId4", "rId5",
			-emuPerInch, -emuPerInch, emuPerInch/3, emuPerInch/3))
		timing = audioTiming(audioID)
	}

	return xml.Header + `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld>` + background +
		`<p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		shapes.String() +
		`</p:spTree>` +
		`</p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
		timing +
		`</p:sld>`
}

type para struct {
	text  string
	size  int    // hundredths of a point
	bold  bool
	color string // RRGGBB, empty for default
	align string // ctr, l, empty for default
}

func bulletParas(bullets []string) []para {
	out := make([]para, 0, len(bullets))
	for _, b := range bullets {
		out = append(out, para{text: "• " + b, size: 1800, color: "333333"})
	}
	return out
}

func textBox(id int, name string, x, y, cx, cy int64, paras []para) string {
	var body strings.Builder
	for _, p := range paras {
		body.WriteString(`<a:p>`)
		if p.align != "" {
			body.WriteString(fmt.Sprintf(`<a:pPr algn="%s"/>`, p.align))
		}
		body.WriteString(`<a:r><a:rPr lang="en-US" sz="` + fmt.Sprint(p.size) + `"`)
		if p.bold {
			body.WriteString(` b="1"`)
		}
		body.WriteString(`>`)
		if p.color != "" {
			body.WriteString(`<a:solidFill><a:srgbClr val="` + p.color + `"/></a:solidFill>`)
		}
		body.WriteString(`</a:rPr><a:t>` + esc(p.text) + `</a:t></a:r></a:p>`)
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square" anchor="t"><a:normAutofit/></a:bodyPr><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, esc(name), x, y, cx, cy, body.String())
}

func picture(id int, relID string, x, y, cx, cy int64) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Illustration"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, relID, x, y, cx, cy)
}

func audioShape(id int, audioRel, mediaRel string, x, y, cx, cy int64) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Narration"><a:hlinkClick r:id="" action="ppaction://media"/></p:cNvPr>`+
		`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr>`+
		`<p:nvPr><a:audioFile r:link="%s"/><p:extLst><p:ext uri="{DAA4B4D4-6D71-4841-9C94-3DE7FCFB9230}">`+
		`<p14:media xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main" r:embed="%s"/></p:ext></p:extLst></p:nvPr></p:nvPicPr>`+
		`<p:blipFill><a:blip/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, audioRel, mediaRel, x, y, cx, cy)
}

// audioTiming autoplays the narration shape when the slide appears.
func audioTiming(shapeID int) string {
	return fmt.Sprintf(`<p:timing><p:tnLst><p:par><p:cTn id="1" dur="indefinite" restart="never" nodeType="tmRoot"><p:childTnLst>`+
		`<p:seq concurrent="1" nextAc="seek"><p:cTn id="2" dur="indefinite" nodeType="mainSeq"><p:childTnLst>`+
		`<p:par><p:cTn id="3" fill="hold"><p:stCondLst><p:cond delay="indefinite"/><p:cond evt="onBegin" delay="0"><p:tn val="2"/></p:cond></p:stCondLst><p:childTnLst>`+
		`<p:par><p:cTn id="4" fill="hold"><p:stCondLst><p:cond delay="0"/></p:stCondLst><p:childTnLst>`+
		`<p:par><p:cTn id="5" presetID="1" presetClass="mediacall" presetSubtype="0" fill="hold" nodeType="afterEffect"><p:stCondLst><p:cond delay="0"/></p:stCondLst><p:childTnLst>`+
		`<p:cmd type="call" cmd="playFrom(0.0)"><p:cBhvr><p:cTn id="6" dur="1" fill="hold"/><p:tgtEl><p:spTgt spid="%d"/></p:tgtEl></p:cBhvr></p:cmd>`+
		`</p:childTnLst></p:cTn></p:par></p:childTnLst></p:cTn></p:par></p:childTnLst></p:cTn></p:par>`+
		`</p:childTnLst></p:cTn><p:prevCondLst><p:cond evt="onPrev" delay="0"><p:tgtEl><p:sldTgt/></p:tgtEl></p:cond></p:prevCondLst>`+
		`<p:nextCondLst><p:cond evt="onNext" delay="0"><p:tgtEl><p:sldTgt/></p:tgtEl></p:cond></p:nextCondLst></p:seq>`+
		`</p:childTnLst></p:cTn></p:par></p:tnLst></p:timing>`, shapeID)
}

func notesSlideXML(notes string) string {
	var body strings.Builder
	for _, line := range strings.Split(notes, "\n") {
		body.WriteString(`<a:p><a:r><a:rPr lang="en-US" sz="1200"/><a:t>` + esc(line) + `</a:t></a:r></a:p>`)
	}
	if notes == "" {
		body.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	return xml.Header + `<p:notes xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/>` +
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>` +
		`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>` + body.String() + `</p:txBody></p:sp>` +
		`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`
}

func notesSlideRels(n int) string {
	return xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster" Target="../notesMasters/notesMaster1.xml"/>` +
		fmt.Sprintf(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="../slides/slide%d.xml"/>`, n) +
		`</Relationships>`
}

const slideMasterXML = xml.Header + `<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xml.Header + `<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank" preserve="1">` +
	`<p:cSld name="Blank"><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const notesMasterXML = xml.Header + `<p:notesMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`</p:notesMaster>`

const notesMasterRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme2.xml"/>` +
	`</Relationships>`

func themeXML(name string) string {
	return xml.Header + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="` + esc(name) + `">` +
		`<a:themeElements>` +
		`<a:clrScheme name="Office">` +
		`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
		`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
		`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="` + brandColor + `"/></a:accent1>` +
		`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
		`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
		`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
		`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
		`</a:clrScheme>` +
		`<a:fontScheme name="Office">` +
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
		`</a:fontScheme>` +
		`<a:fmtScheme name="Office">` +
		`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
		`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
		`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
		`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
		`</a:fmtScheme>` +
		`</a:themeElements>` +
		`</a:theme>`
}
