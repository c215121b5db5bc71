package types

type ConstError string

func (err ConstError) Error() string { return string(err) }

const (
	NoImageOpenErr               ConstError = "no image open"
	ImageAlreadyOpenErr          ConstError = "an image is already open"
	ImageNotFoundErr             ConstError = "image not found"
	CorruptImageErr              ConstError = "corrupt image"
	InvalidGeometryErr           ConstError = "invalid geometry"
	FileNotFoundErr              ConstError = "file not found"
	FileExistsErr                ConstError = "file exists"
	FileTooLargeErr              ConstError = "file too large"
	InsufficientSpaceErr         ConstError = "insufficient space"
	DirectoryFullErr             ConstError = "directory full"
	InodeExhaustedErr            ConstError = "out of inodes"
	BlockExhaustedErr            ConstError = "out of blocks"
	PerFileBlockLimitExceededErr ConstError = "per-file block limit exceeded"
	ReadOnlyViolationErr         ConstError = "file is read-only"
	RangeOutOfBoundsErr          ConstError = "range out of bounds"
	OutputOpenFailedErr          ConstError = "failed to open output file"
	NameTooLongErr               ConstError = "name too long"
	InvalidNameErr               ConstError = "invalid name"
	InvalidAttributeErr          ConstError = "invalid attribute"
	LogicErr                     ConstError = "logic error"
)
