package center

// ObjectType is the kind of object an item refers to.
type ObjectType string

const (
	ObjectApplication ObjectType = "application"
	ObjectBlock       ObjectType = "block"
	ObjectBranch      ObjectType = "branch"
	ObjectChat        ObjectType = "chat"
	ObjectDocument    ObjectType = "document"
	ObjectFile        ObjectType = "file"
	ObjectFolder      ObjectType = "folder"
	ObjectPipeline    ObjectType = "pipeline"
	ObjectPipelineRun ObjectType = "pipeline_run"
	ObjectProject     ObjectType = "project"
	ObjectSettings    ObjectType = "settings"
	ObjectTerminal    ObjectType = "terminal"
	ObjectTrigger     ObjectType = "trigger"
)

// Icon identifies an icon; the TUI maps it to a glyph.
type Icon string

const (
	IconApplication Icon = "application"
	IconBlock       Icon = "block"
	IconBranch      Icon = "branch"
	IconChat        Icon = "chat"
	IconDocument    Icon = "document"
	IconFile        Icon = "file"
	IconFolder      Icon = "folder"
	IconPipeline    Icon = "pipeline"
	IconRun         Icon = "run"
	IconProject     Icon = "project"
	IconSettings    Icon = "settings"
	IconTerminal    Icon = "terminal"
	IconTrigger     Icon = "trigger"
)

// Color is an accent color identifier; the TUI theme maps it to a terminal color.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorSky    Color = "sky"
	ColorGray   Color = "gray"
)

// Iconable is implemented by anything that can be drawn with an icon.
type Iconable interface {
	Icon() Icon
}

// Colorable is implemented by anything that carries an accent color.
type Colorable interface {
	Color() Color
}

var objectIcons = map[ObjectType]Icon{
	ObjectApplication: IconApplication,
	ObjectBlock:       IconBlock,
	ObjectBranch:      IconBranch,
	ObjectChat:        IconChat,
	ObjectDocument:    IconDocument,
	ObjectFile:        IconFile,
	ObjectFolder:      IconFolder,
	ObjectPipeline:    IconPipeline,
	ObjectPipelineRun: IconRun,
	ObjectProject:     IconProject,
	ObjectSettings:    IconSettings,
	ObjectTerminal:    IconTerminal,
	ObjectTrigger:     IconTrigger,
}

var objectColors = map[ObjectType]Color{
	ObjectApplication: ColorPurple,
	ObjectBlock:       ColorSky,
	ObjectBranch:      ColorPink,
	ObjectChat:        ColorPink,
	ObjectDocument:    ColorGray,
	ObjectFile:        ColorGray,
	ObjectFolder:      ColorYellow,
	ObjectPipeline:    ColorBlue,
	ObjectPipelineRun: ColorGreen,
	ObjectProject:     ColorPurple,
	ObjectSettings:    ColorGray,
	ObjectTerminal:    ColorGreen,
	ObjectTrigger:     ColorYellow,
}

// Icon implements Iconable with the object type's default icon.
func (o ObjectType) Icon() Icon {
	if ic, ok := objectIcons[o]; ok {
		return ic
	}
	return IconApplication
}

// Color implements Colorable with the object type's default accent.
func (o ObjectType) Color() Color {
	if c, ok := objectColors[o]; ok {
		return c
	}
	return ColorGray
}

// Icon implements Iconable. Display settings override the object type default.
func (i *Item) Icon() Icon {
	if i == nil {
		return IconApplication
	}
	if i.DisplaySettings.Icon != "" {
		return i.DisplaySettings.Icon
	}
	return i.ObjectType.Icon()
}

// Color implements Colorable. Display settings override the object type default.
func (i *Item) Color() Color {
	if i == nil {
		return ColorGray
	}
	if i.DisplaySettings.Color != "" {
		return i.DisplaySettings.Color
	}
	return i.ObjectType.Color()
}
